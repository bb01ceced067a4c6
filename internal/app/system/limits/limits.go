// internal/app/system/limits/limits.go
package limits

// Request body size limits. Handlers wrap r.Body with http.MaxBytesReader
// before decoding so an oversized request fails instead of being buffered.
const (
	// MaxRegisterBody bounds the public registration JSON body.
	MaxRegisterBody = 64 << 10 // 64 KB

	// MaxAdminForm bounds the add-department and add-event forms. Descriptions
	// are free HTML, so this is larger than the registration limit.
	MaxAdminForm = 256 << 10 // 256 KB
)
