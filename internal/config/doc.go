// Package config loads the per-repository workflow configuration.
//
// Defaults cover a main/staging/prototype setup; a .gitx.yml file at the
// repository root overrides them key by key. The loaded Config also answers
// the branch classification questions every workflow action asks.
package config
