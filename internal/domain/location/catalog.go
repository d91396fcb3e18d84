// internal/domain/location/catalog.go
package location

// Region is one entry of the catalog: a region name and its districts in display order.
type Region struct {
	Name      string
	Districts []string
}

// Catalog is the static, read-only region -> district mapping.
type Catalog struct {
	regions   []Region
	byName    map[string]int
	districts map[string]struct{}
}

// NewCatalog builds a catalog from regions in display order.
func NewCatalog(regions []Region) *Catalog {
	c := &Catalog{
		regions:   regions,
		byName:    make(map[string]int, len(regions)),
		districts: make(map[string]struct{}),
	}
	for i, r := range regions {
		c.byName[r.Name] = i
		for _, d := range r.Districts {
			c.districts[d] = struct{}{}
		}
	}
	return c
}

// RegionNames returns region names in display order.
func (c *Catalog) RegionNames() []string {
	names := make([]string, 0, len(c.regions))
	for _, r := range c.regions {
		names = append(names, r.Name)
	}
	return names
}

// Districts returns the districts of a region, or false if the region is unknown.
func (c *Catalog) Districts(region string) ([]string, bool) {
	i, ok := c.byName[region]
	if !ok {
		return nil, false
	}
	return c.regions[i].Districts, true
}

// IsDistrict reports whether name is listed under any region.
func (c *Catalog) IsDistrict(name string) bool {
	_, ok := c.districts[name]
	return ok
}
