package appointment

import (
	"github.com/shopspring/decimal"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

const maxNotesLength = 255

var hundred = decimal.NewFromInt(100)

// validateRequest collects every field-level problem before any collaborator
// is called.
func validateRequest(req BookingRequest) error {
	v := &domain.ValidationError{}
	add := func(field, code, msg string) {
		v.Fields = append(v.Fields, domain.FieldError{Field: field, Code: code, Message: msg})
	}

	if req.CompanyID == 0 {
		add("company_id", "required", "Empresa obrigatória.")
	}
	if req.CustomerID == 0 {
		add("customer_id", "required", "Cliente obrigatório.")
	}
	if req.ProfessionalID == 0 {
		add("professional_id", "required", "Profissional obrigatório.")
	}
	if req.Date == "" {
		add("date", "required", "Data obrigatória.")
	}
	if req.Time == "" {
		add("time", "required", "Horário obrigatório.")
	}

	if len(req.Services) == 0 {
		add("services", "required", "Selecione ao menos um serviço.")
	}
	for _, s := range req.Services {
		if s.ServiceID == 0 {
			add("services", "invalid_service", "Serviço inválido.")
			break
		}
		if s.Quantity < 1 {
			add("services", "invalid_quantity", "Quantidade de serviço deve ser no mínimo 1.")
			break
		}
	}

	for _, p := range req.Products {
		if p.ProductID == 0 {
			add("products", "invalid_product", "Produto inválido.")
			break
		}
		if p.Quantity < 1 {
			add("products", "invalid_quantity", "Quantidade de produto deve ser no mínimo 1.")
			break
		}
		if p.UsageType != domain.UsageSold && p.UsageType != domain.UsageUsed {
			add("products", "invalid_usage_type", "Tipo de uso do produto inválido.")
			break
		}
		if p.UnitPrice.IsNegative() || !isCents(p.UnitPrice) {
			add("products", "invalid_price", "Preço do produto inválido.")
			break
		}
	}

	if req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(hundred) {
		add("discount_percent", "out_of_range", "Desconto deve estar entre 0 e 100%.")
	} else if !isCents(req.DiscountPercent) {
		add("discount_percent", "invalid_precision", "Desconto aceita no máximo duas casas decimais.")
	}

	if len(req.Notes) > maxNotesLength {
		add("notes", "too_long", "Observações muito longas.")
	}

	if len(v.Fields) == 0 {
		return nil
	}
	return v
}

// isCents reports whether d fits the two decimal places the columns store.
func isCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}
