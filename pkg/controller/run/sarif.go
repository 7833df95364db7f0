package run

import (
	"encoding/json"
	"fmt"

	"github.com/wfaudit/wfaudit/pkg/finding"
	"github.com/wfaudit/wfaudit/pkg/sarif"
)

// outputSARIF writes the collected findings as SARIF 2.1.0 to stdout.
func (c *Controller) outputSARIF() error {
	log := sarif.Log{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarif.Run{
			{
				Tool: sarif.Tool{
					Driver: sarif.Driver{
						Name:           "wfaudit",
						InformationURI: "https://github.com/wfaudit/wfaudit",
						Rules: []sarif.Rule{
							{
								ID: RuleUnpinnedUses,
								ShortDescription: sarif.Message{
									Text: "Action reference isn't pinned at all",
								},
							},
							{
								ID: RuleMutableUses,
								ShortDescription: sarif.Message{
									Text: "Action reference is pinned to a mutable tag or branch",
								},
							},
							{
								ID: RuleInvalidWorkflow,
								ShortDescription: sarif.Message{
									Text: "Workflow file couldn't be parsed",
								},
							},
						},
					},
				},
				Results: c.buildSARIFResults(),
			},
		},
	}

	encoder := json.NewEncoder(c.param.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(log); err != nil {
		return fmt.Errorf("encode SARIF: %w", err)
	}
	return nil
}

func (c *Controller) buildSARIFResults() []sarif.Result {
	results := make([]sarif.Result, 0, len(c.findings))
	for _, f := range c.findings {
		level := "warning"
		if f.Level == finding.LevelError {
			level = "error"
		}
		results = append(results, sarif.Result{
			RuleID:  f.RuleID,
			Level:   level,
			Message: sarif.Message{Text: f.Message},
			Locations: []sarif.Location{
				{
					PhysicalLocation: sarif.PhysicalLocation{
						ArtifactLocation: sarif.ArtifactLocation{
							URI: f.Location.Name,
						},
						Region: sarif.Region{
							StartLine:   f.Line,
							StartColumn: f.Column,
						},
					},
					LogicalLocations: []sarif.LogicalLocation{
						{
							Name:               f.Location.Annotation,
							FullyQualifiedName: f.Location.Route.String(),
						},
					},
				},
			},
		})
	}
	return results
}
