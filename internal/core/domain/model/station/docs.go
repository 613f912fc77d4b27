// Package station defines the fixed ordered pipeline of physical production
// stations (the Station Registry). The Pipeline value object answers every
// ordering question in the system: station ordinals, the terminal station,
// nominal next stations, and the mapping from internal pipeline names to
// user-facing order status names.
//
// The registry is pure and stateless. It is built once at startup from
// configuration and injected wherever station knowledge is needed; no other
// package encodes the station order.
package station
