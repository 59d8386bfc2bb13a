// Package config defines the layered configuration of the go-blog-api
// server. Values are collected from environment variables (caarlos0/env),
// command-line flags, and built-in defaults, merged with mergo in that
// order of precedence, and validated before use.
package config
