package access

// Permission labels stored in the role table.
const (
	TransactionView   = "TRANSACTION_VIEW"
	TransactionEdit   = "TRANSACTION_EDIT"
	TransactionCreate = "TRANSACTION_CREATE"
	TransactionDelete = "TRANSACTION_DELETE"

	ProductsView   = "PRODUCTS_VIEW"
	ProductsEdit   = "PRODUCTS_EDIT"
	ProductsCreate = "PRODUCTS_CREATE"

	DashboardView = "DASHBOARD_VIEW"

	OrderView   = "ORDER_VIEW"
	OrderEdit   = "ORDER_EDIT"
	OrderCreate = "ORDER_CREATE"
	OrderDelete = "ORDER_DELETE"
)

// HasAll reports whether every required label is granted. An empty requirement or an
// empty grant set never passes.
func HasAll(granted, required []string) bool {
	if len(granted) == 0 || len(required) == 0 {
		return false
	}
	set := toSet(granted)
	for _, label := range required {
		if _, ok := set[label]; !ok {
			return false
		}
	}
	return true
}

// HasAny reports whether at least one candidate label is granted.
func HasAny(granted, candidates []string) bool {
	if len(granted) == 0 || len(candidates) == 0 {
		return false
	}
	set := toSet(granted)
	for _, label := range candidates {
		if _, ok := set[label]; ok {
			return true
		}
	}
	return false
}

func toSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}
