package catalog

import "time"

// Defaults used when Config fields are zero
const (
	DefaultBaseURL    = "https://www.dnd5eapi.co"
	DefaultTimeout    = 5 * time.Second
	DefaultCacheSize  = 512
	DefaultCacheTTL   = time.Hour
	DefaultMaxRetries = 2
	DefaultRetryDelay = 200 * time.Millisecond
)

// Catalog collection paths
const (
	EquipmentPath  = "/api/equipment/"
	MagicItemsPath = "/api/magic-items/"
)

// CacheSchemaVersion invalidates cached entries when the cached shape changes
const CacheSchemaVersion = "1.0"

const (
	ErrMsgEmptyIndex       = "item index is required"
	ErrMsgRequestFailed    = "catalog request %s failed after %d attempts: %v: %w"
	ErrMsgRequestCancelled = "catalog request %s cancelled: %w: %w"
	ErrMsgUnexpectedCode   = "catalog returned status %d for %s: %w"
	ErrMsgDecodeFailed     = "failed to decode catalog response for %s: %v: %w"
	ErrMsgBuildRequest     = "failed to build catalog request: %w"
	ErrMsgItemNotInCatalog = "%s: %w"
)

const (
	LogMsgRetrying     = "Retrying catalog request"
	LogMsgCacheHit     = "Catalog cache hit"
	LogMsgItemResolved = "Catalog item resolved"
)
