package pagination

// DefaultLimit is the page size used when none is requested.
const DefaultLimit = 20

// MaxLimit is the largest page size a caller may request.
const MaxLimit = 100
