package domain

// Named is implemented by every record the remote API owns.
type Named interface {
	EntityID() int64
	EntityName() string
}

// Ref is an optional pointer to a related record. A nil *Ref means "none".
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"nome,omitempty"`
}

type Category struct {
	ID   int64  `json:"id,omitempty"` // server assigned
	Name string `json:"nome"`
}

func (c Category) EntityID() int64    { return c.ID }
func (c Category) EntityName() string { return c.Name }

type Supplier struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"nome"`
}

func (s Supplier) EntityID() int64    { return s.ID }
func (s Supplier) EntityName() string { return s.Name }

type Product struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"nome"`
	Description string  `json:"descricao"`
	Price       float64 `json:"preco"`
	Stock       int     `json:"quantidadeEstoque"`
	Category    *Ref    `json:"categoria"`
	Supplier    *Ref    `json:"fornecedor"`
}

func (p Product) EntityID() int64    { return p.ID }
func (p Product) EntityName() string { return p.Name }

// CategoryName returns the referenced category name or "N/A".
func (p Product) CategoryName() string {
	if p.Category == nil || p.Category.Name == "" {
		return "N/A"
	}
	return p.Category.Name
}

func (p Product) SupplierName() string {
	if p.Supplier == nil || p.Supplier.Name == "" {
		return "N/A"
	}
	return p.Supplier.Name
}
