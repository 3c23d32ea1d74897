package utils

import (
	"context"
	"doctor-appointment-service/internal/pkg/constvars"
)

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func GetIdentity(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(constvars.CONTEXT_IDENTITY_KEY).(*Identity)
	return identity, ok && identity != nil
}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_IDENTITY_KEY, identity)
}
