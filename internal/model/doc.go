// Package model defines shared data types used across coinmage.
//
// Conventions:
//   - Asset IDs are the provider's canonical, unique coin IDs (e.g. "bitcoin").
//   - Symbols are user-facing tickers and are not unique across the catalog.
//   - Optional numeric market fields are pointers; nil means the provider did not report a value.
package model
