// Package config reads application settings.
//
// Code depends on the Config interface; Viper is the implementation, loading a
// YAML file (reloaded on change) or an in-memory document, with environment
// variables such as GOSECRET_SECRET_POLICY overriding secret.policy.
package config
