// Package middleware holds the fiber interceptors shared by the HTTP adapters.
// Each interceptor either answers the request itself or calls c.Next().
package middleware
