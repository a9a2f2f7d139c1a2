package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/anuntech/racaforte-backend-sub000/models"
	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

// LabelService renders printable stock labels.
type LabelService struct {
	publicBaseURL string
}

func NewLabelService(publicBaseURL string) *LabelService {
	return &LabelService{publicBaseURL: strings.TrimRight(publicBaseURL, "/")}
}

// PartURL is the address encoded in the label QR code.
func (s *LabelService) PartURL(part models.Part) string {
	return s.publicBaseURL + "/parts/" + part.ID.String()
}

// PartLabelPDF renders the label of a part: identification, stock address,
// suggested price and a QR code pointing at the part page.
func (s *LabelService) PartLabelPDF(part models.Part, vehicle models.Vehicle) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(15, 15, 15)

	dark := color.Color{Red: 30, Green: 30, Blue: 30}
	muted := color.Color{Red: 110, Green: 110, Blue: 110}

	m.Row(14, func() {
		m.Col(12, func() {
			m.Text(part.Name, props.Text{Size: 20, Style: consts.Bold, Color: dark})
		})
	})
	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(vehicleLine(vehicle), props.Text{Size: 12, Color: muted})
		})
	})
	m.Row(6, func() {})

	m.Row(60, func() {
		m.Col(6, func() {
			m.QrCode(s.PartURL(part), props.Rect{Center: true, Percent: 90})
		})
		m.Col(6, func() {
			m.Text("Estado: "+conditionLabel(part.Condition), props.Text{Size: 12, Top: 4, Color: dark})
			m.Text("Local: "+orDash(part.StockAddress), props.Text{Size: 12, Top: 14, Color: dark})
			m.Text("Veículo: "+orDash(vehicle.InternalID), props.Text{Size: 12, Top: 24, Color: dark})
			if part.SuggestedPrice != nil {
				m.Text(FormatBRL(*part.SuggestedPrice), props.Text{Size: 22, Top: 38, Style: consts.Bold, Color: dark})
			}
		})
	})

	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(part.ID.String(), props.Text{Size: 8, Color: muted, Align: consts.Center})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to render label: %w", err)
	}
	return buf.Bytes(), nil
}

func vehicleLine(v models.Vehicle) string {
	line := strings.TrimSpace(v.Brand + " " + v.Model)
	if v.Version != "" {
		line += " " + v.Version
	}
	if v.Year > 0 {
		line += " " + strconv.Itoa(v.Year)
	}
	return line
}

func conditionLabel(c string) string {
	switch c {
	case models.ConditionGood:
		return "Boa"
	case models.ConditionMedium:
		return "Média"
	case models.ConditionBad:
		return "Ruim"
	}
	return orDash(c)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// FormatBRL formats an amount as "R$ 1.234,56".
func FormatBRL(v float64) string {
	cents := int64(math.Round(v * 100))
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	whole := strconv.FormatInt(cents/100, 10)
	var grouped strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped.String(), cents%100)
}
