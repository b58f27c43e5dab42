// Package domain defines the core domain models for ConnectUS.
//
// Domain models are pure value objects and entities without any
// IO dependencies or framework coupling. This package contains:
//
//   - Person: contact entity with its validated fields
//   - Field types: Name, Phone, Email, Address, Birthday
//   - SocialMedia: Instagram, Telegram and WhatsApp handles
//   - Tags: remark, module, CCA, CCA position and major categories
//   - Index: one-based/zero-based list positions
//   - Errors: domain-specific error definitions
//
// Every field type has an IsValid predicate and a fixed constraint
// message that is shown verbatim when validation fails.
package domain
