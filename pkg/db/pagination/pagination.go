package pagination

// DefaultPageSize matches the number of rows shown per invoices table page.
const DefaultPageSize = 6

// Offset describes 1-based page/offset pagination.
type Offset struct {
	Page     int `form:"page,default=1" validate:"gte=1"`
	PageSize int `form:"page_size" validate:"gte=0,lte=250"`
}

// Normalize clamps the page to 1 and falls back to DefaultPageSize.
func (o Offset) Normalize() Offset {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	return o
}

// Skip returns the number of rows preceding the page.
func (o Offset) Skip() int {
	n := o.Normalize()
	return (n.Page - 1) * n.PageSize
}

// Limit returns the page size.
func (o Offset) Limit() int {
	return o.Normalize().PageSize
}

// TotalPages returns ceil(count / pageSize).
func TotalPages(count int64, pageSize int) int {
	if count <= 0 {
		return 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	size := int64(pageSize)
	return int((count + size - 1) / size)
}
