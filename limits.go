package pagewindow

const (
	// NoLimit asks a Repository for every matching id.
	NoLimit        = -1
	MaxPerPage     = 100
	DefaultPerPage = 20
)

// IsNormalizedPerPageMax reports whether perPage needed no adjustment. A missing perPage
// falls back to DefaultPerPage, capped by maxPerPage.
func IsNormalizedPerPageMax(perPage int, maxPerPage int) (int, bool) {
	if perPage <= 0 {
		return min(DefaultPerPage, maxPerPage), false
	} else if perPage > maxPerPage {
		return maxPerPage, false
	}

	return perPage, true
}

func NormalizePerPageMax(perPage int, maxPerPage int) int {
	ret, _ := IsNormalizedPerPageMax(perPage, maxPerPage)
	return ret
}

func NormalizePerPage(perPage int) int {
	return NormalizePerPageMax(perPage, MaxPerPage)
}

// NormalizePage clamps request input to the first page.
func NormalizePage(page int) int {
	return max(page, 1)
}
