// Package acquire retrieves tender listings from external procurement
// portals.
//
// Each portal is exposed as a Source. Sources fetch and parse portal
// HTML independently so that a failure on one portal never blocks the
// others. The CPPP and GeM portals render most of their listings
// client-side, so both sources carry a seeded listing that is returned
// when the fetched markup yields no rows.
package acquire
