// Package types defines the glossary entry and feedback record types, the
// Glossary and FeedbackLog interfaces, configuration, and the standard
// errors shared by the glossary browser.
package types
