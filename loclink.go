// Package loclink provides a web tool that checks the localization of
// marketing pages. It fetches a localized page, extracts the links in the
// page's main content, and verifies that each link either works or points
// at the locale-specific variant of its target when one exists.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, sqlite/).
package loclink
