// Package filters provides ready-made passes and groups built on package filter.
package filters
