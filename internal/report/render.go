package report

import (
	"fmt"
	"strings"
)

// RenderText flattens a document into the plain-text feed handed to the
// analysis service. Summary lines are omitted when empty rather than printed
// blank.
func RenderText(doc *Document) string {
	var b strings.Builder

	b.WriteString("HOME INSPECTION REPORT\n")
	if doc.Address != nil {
		fmt.Fprintf(&b, "Property Address: %s, %s, %s %s\n",
			doc.Address.Street, doc.Address.City, doc.Address.State, doc.Address.Zip)
	}
	if doc.Inspection != nil {
		fmt.Fprintf(&b, "Inspection Date: %s\n", doc.Inspection.InspectionDate)
		if doc.Inspection.Weather != "" {
			fmt.Fprintf(&b, "Weather: %s, %d F, ground %s\n",
				doc.Inspection.Weather, doc.Inspection.Temperature, doc.Inspection.GroundCondition)
		}
		if doc.Inspection.RainLastThreeDays {
			b.WriteString("Rain in last 3 days: yes\n")
		}
	}
	if doc.Property != nil {
		fmt.Fprintf(&b, "Property: %s, built %d, %d sq ft, %d bed / %d bath\n",
			doc.Property.PropertyType, doc.Property.YearBuilt, doc.Property.SquareFootage,
			doc.Property.Bedrooms, doc.Property.Bathrooms)
	}

	for _, section := range doc.Sections {
		fmt.Fprintf(&b, "\n%d. %s\n", section.Index, section.Title)
		for _, item := range section.Items {
			fmt.Fprintf(&b, "%s %s - Status: %s\n", item.Index, item.Record.ItemName, item.Record.Status)
			if item.MaterialSummary != "" {
				fmt.Fprintf(&b, "   Styles & Materials: %s\n", item.MaterialSummary)
			}
			if item.ConditionSummary != "" {
				fmt.Fprintf(&b, "   Condition: %s\n", item.ConditionSummary)
			}
			if item.Record.Comment != "" {
				fmt.Fprintf(&b, "   Observation: %s\n", item.Record.Comment)
			}
			if len(item.Photos) > 0 {
				fmt.Fprintf(&b, "   Photos attached: %d\n", len(item.Photos))
			}
		}
	}

	return b.String()
}
