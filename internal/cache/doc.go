// Package cache stores reference data fetched from the backend as JSON files
// with a TTL.
//
// Manufacturers, vehicle types and trims change rarely but are needed by every
// car form and filter, so the dashboard and CLI read them through this cache.
// Entries live under ~/.dealerdesk/cache/ by default and are keyed by a SHA256
// of the operation, the backend URL and any parameters.
package cache
