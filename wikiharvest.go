// Package wikiharvest crawls documentation wikis and related sites,
// discovering pages breadth-first and handing the fetched content to a
// persistence sink. It supports plain HTTP crawling as well as crawling
// through a browser-automation client for JavaScript-rendered or
// SSO-protected sites.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., crawl/, rod/, sqlite/, fs/).
package wikiharvest
