package appointment

import "context"

type StockResult struct {
	OK                bool `json:"ok"`
	FirstInsufficient uint `json:"first_insufficient,omitempty"`
}

// ValidateStock checks every product line with quantity > 0, in submission
// order, and stops at the first one the catalog cannot cover. Used and sold
// lines both consume physical stock.
func ValidateStock(ctx context.Context, checker StockChecker, lines []ProductLineItem) (StockResult, error) {
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		ok, err := checker.CheckStock(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return StockResult{}, Wrap("consultar estoque", err)
		}
		if !ok {
			return StockResult{FirstInsufficient: line.ProductID}, nil
		}
	}
	return StockResult{OK: true}, nil
}

// NetDemand discounts quantities already reserved by the appointment being
// edited, product by product, so an update only asks for the extra stock.
func NetDemand(lines []ProductLineItem, reserved []ProductLineItem) []ProductLineItem {
	credit := map[uint]int{}
	for _, r := range reserved {
		credit[r.ProductID] += r.Quantity
	}

	out := make([]ProductLineItem, 0, len(lines))
	for _, line := range lines {
		c := credit[line.ProductID]
		used := min(c, line.Quantity)
		credit[line.ProductID] = c - used
		line.Quantity -= used
		out = append(out, line)
	}
	return out
}
