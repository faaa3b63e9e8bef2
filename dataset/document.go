package dataset

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/midc-land-bank/ragserver/schema"
)

// RenderDocument turns a plot into the document text and metadata the
// retrieval pipeline indexes. The pipe-separated layout keeps the
// regional office and industrial area names intact so rewritten
// queries carrying "RO PUNE-I" style terms match well.
func RenderDocument(p Plot) schema.Document {
	content := fmt.Sprintf(
		"Regional Office: %s | Industrial Area: %s | Plot No: %s | Area: %.2f sq. meter | Category: %s",
		p.RegionalOffice, p.IndustrialArea, p.PlotNo, p.AreaSqMeter, p.PropertyType,
	)
	return schema.Document{
		ID:      uuid.NewString(),
		Content: content,
		Metadata: map[string]any{
			"sr_no":           p.SrNo,
			"regional_office": p.RegionalOffice,
			"industrial_area": p.IndustrialArea,
			"plot_no":         p.PlotNo,
			"area_sq_meter":   p.AreaSqMeter,
			"property_type":   p.PropertyType,
		},
		CreatedAt: time.Now(),
	}
}
