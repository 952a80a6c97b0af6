// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The ingestion pipeline runs adapt, cluster, merge and index in that
// order and publishes the finished index with a single atomic swap.
package services
