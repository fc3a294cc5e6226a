package app

import "github.com/gammasky/dl3kit/internal/appcontext"

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)
