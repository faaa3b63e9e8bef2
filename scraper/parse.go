package scraper

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/midc-land-bank/ragserver/common/logger"
)

// plotTableID is the table the portal renders plot rows into.
const plotTableID = "myTableforPlotUnderAllotmentList"

// plotRow is one parsed table row.
type plotRow struct {
	SrNo           string
	RegionalOffice string
	IndustrialArea string
	PlotNo         string
	AreaSqMeter    float64
}

func readBody(resp *http.Response) (string, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	return string(data), nil
}

// parsePlotRows extracts plot rows from a partial-view HTML fragment.
// It looks for the plot table by id, falling back to any table whose id
// contains "Table" since the portal has renamed it before.
func parsePlotRows(body string) ([]plotRow, error) {
	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page html: %w", err)
	}

	table := findTable(doc)
	if table == nil {
		return nil, nil
	}

	var rows []plotRow
	for _, tr := range findRows(table) {
		cells := cellTexts(tr)
		if len(cells) < 5 {
			continue
		}
		area, err := strconv.ParseFloat(strings.ReplaceAll(cells[4], ",", ""), 64)
		if err != nil {
			logger.Debugf("skipping row with unparsable area %q", cells[4])
			continue
		}
		rows = append(rows, plotRow{
			SrNo:           cells[0],
			RegionalOffice: cells[1],
			IndustrialArea: cells[2],
			PlotNo:         cells[3],
			AreaSqMeter:    area,
		})
	}
	return rows, nil
}

func findTable(n *html.Node) *html.Node {
	var exact, fallback *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			id := attr(n, "id")
			if id == plotTableID && exact == nil {
				exact = n
			}
			if strings.Contains(id, "Table") && fallback == nil {
				fallback = n
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	if exact != nil {
		return exact
	}
	return fallback
}

// findRows returns the tr elements of the table body. Header rows live
// in thead, so tr elements directly under thead are skipped.
func findRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	var walk func(n *html.Node, inHead bool)
	walk = func(n *html.Node, inHead bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead":
				walk(c, true)
			case "tbody":
				walk(c, false)
			case "tr":
				if !inHead {
					rows = append(rows, c)
				}
			default:
				walk(c, inHead)
			}
		}
	}
	walk(table, false)
	return rows
}

func cellTexts(tr *html.Node) []string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			cells = append(cells, strings.TrimSpace(nodeText(c)))
		}
	}
	return cells
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
