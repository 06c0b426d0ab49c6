package catalog

import "context"

// Multi federates several catalogs. Lookups try each catalog in order and the
// first successful resolution wins; predicate lookups concatenate entries
// from all catalogs. The connection string of the first catalog is used.
type Multi struct {
	catalogs []Catalog
}

// NewMulti creates a federated catalog. At least one catalog is required.
func NewMulti(catalogs ...Catalog) *Multi {
	if len(catalogs) == 0 {
		panic("catalog: NewMulti requires at least one catalog")
	}
	return &Multi{catalogs: catalogs}
}

// SpecialToken implements Catalog.
func (m *Multi) SpecialToken(ctx context.Context, token, resourceTypeFullName string) (*SpecialToken, error) {
	for _, c := range m.catalogs {
		st, err := c.SpecialToken(ctx, token, resourceTypeFullName)
		if err != nil {
			return nil, err
		}
		if st != nil {
			return st, nil
		}
	}
	return nil, nil
}

// PropertyToken implements Catalog.
func (m *Multi) PropertyToken(ctx context.Context, token, resourceTypeFullName string) (*ColumnRef, error) {
	for _, c := range m.catalogs {
		col, err := c.PropertyToken(ctx, token, resourceTypeFullName)
		if err != nil {
			return nil, err
		}
		if col != nil {
			return col, nil
		}
	}
	return nil, nil
}

// ImplicitProperties implements Catalog. The first catalog that knows any
// implicit properties for the type answers.
func (m *Multi) ImplicitProperties(ctx context.Context, resourceTypeFullName string) ([]ColumnRef, error) {
	for _, c := range m.catalogs {
		cols, err := c.ImplicitProperties(ctx, resourceTypeFullName)
		if err != nil {
			return nil, err
		}
		if len(cols) > 0 {
			return cols, nil
		}
	}
	return nil, nil
}

// PredicateToken implements Catalog.
func (m *Multi) PredicateToken(ctx context.Context, token string) ([]PredicateInfo, error) {
	var all []PredicateInfo
	for _, c := range m.catalogs {
		infos, err := c.PredicateToken(ctx, token)
		if err != nil {
			return nil, err
		}
		all = append(all, infos...)
	}
	return all, nil
}

// TypeFilter implements Catalog.
func (m *Multi) TypeFilter(ctx context.Context, resourceTypeFullName string) (string, error) {
	for _, c := range m.catalogs {
		filter, err := c.TypeFilter(ctx, resourceTypeFullName)
		if err != nil {
			return "", err
		}
		if filter != "" {
			return filter, nil
		}
	}
	return "", nil
}

// Connection implements Catalog.
func (m *Multi) Connection() string {
	return m.catalogs[0].Connection()
}
