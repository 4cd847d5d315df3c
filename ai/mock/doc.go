// Package mock provides test doubles for the ai interfaces. The mocks use
// deterministic defaults (hash-derived vectors, canned replies) so tests
// run without external services, and expose function fields for injecting
// custom behavior per test.
package mock
