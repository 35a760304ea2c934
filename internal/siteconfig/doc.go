// Package siteconfig resolves the configuration record consumed by the
// static-output adapter of an external site build tool. Resolution is a pure
// mapping from the process argument list and environment to a SiteConfig:
// adapter options are fixed, and the base path is empty in dev mode or taken
// verbatim from BASE_PATH otherwise.
package siteconfig
