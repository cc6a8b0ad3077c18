// Package redact sanitizes values before they reach logs.
//
// Three surfaces:
//   - Mask, the standalone string-masking utility;
//   - HeaderRedactor, which replaces sensitive header values with a fixed
//     placeholder;
//   - Engine, which recursively sanitizes structured values using per-field
//     directives declared with `sensitive` struct tags or registered by
//     serialized field name.
//
// Field plans are compiled once per type and cached; no per-request
// reflection pass happens after the first encounter with a type.
package redact
