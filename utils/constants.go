// File: utils/constants.go
package utils

import "time"

// AuthSessionPrefix is the prefix used for Redis session keys.
const AuthSessionPrefix = "authSession:"

// UserListCacheKey holds the cached admin user list.
const UserListCacheKey = "admin:users"

// UserListCacheTTL bounds how stale the cached admin list may get.
const UserListCacheTTL = 3 * time.Second

// ConfirmationPrefix is the prefix for pending admin confirmations.
const ConfirmationPrefix = "admin:confirm:"

// ConfirmationTTL is how long an admin action waits for confirmation.
const ConfirmationTTL = 5 * time.Minute
