package codec

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/guttosm/goldpulse/internal/domain/models"
)

type xmlDocument struct {
	XMLName xml.Name   `xml:"ArrayOfGoldPrice"`
	Prices  []xmlPrice `xml:"GoldPrice"`
}

type xmlPrice struct {
	Date  string `xml:"Date"`
	Price string `xml:"Price"`
}

// XML stores a series as
//
//	<ArrayOfGoldPrice>
//	  <GoldPrice><Date>2020-01-02</Date><Price>192.31</Price></GoldPrice>
//	</ArrayOfGoldPrice>
type XML struct{}

func (XML) Extension() string { return ".xml" }

func (XML) Encode(w io.Writer, points []models.PricePoint) error {
	doc := xmlDocument{Prices: make([]xmlPrice, 0, len(points))}
	for _, p := range points {
		doc.Prices = append(doc.Prices, xmlPrice{Date: formatDate(p.Date), Price: formatPrice(p.Price)})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (XML) Decode(r io.Reader) ([]models.PricePoint, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	out := make([]models.PricePoint, 0, len(doc.Prices))
	for i, xp := range doc.Prices {
		d, err := parseDate(xp.Date)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		p, err := parsePrice(xp.Price)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, models.PricePoint{Date: d, Price: p})
	}
	return out, nil
}
