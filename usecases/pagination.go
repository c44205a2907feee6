package usecases

// Default page sizes. Readings use a larger page than users and devices on
// purpose: the report export consumes a full reading page in one call and
// reading sets are much denser than device fleets.
const (
	DefaultPageSize        = 10
	DefaultReadingPageSize = 100
)

// normalizePage replaces negative or zero values with defaults. An
// out-of-range offset is not an error; it just yields an empty page.
func normalizePage(skip, limit, defaultLimit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return skip, limit
}
