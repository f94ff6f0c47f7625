package opentelemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/startdusk/go-sqlbind/bind"
)

const instrumentationName = "github.com/startdusk/go-sqlbind/bind/middleware/opentelemetry"

type MiddlewareBuilder struct {
	Tracer trace.Tracer
}

func (m MiddlewareBuilder) Build() bind.Middleware {
	if m.Tracer == nil {
		m.Tracer = otel.GetTracerProvider().Tracer(instrumentationName)
	}
	return func(next bind.Handler) bind.Handler {
		return func(ctx context.Context, qc *bind.QueryContext) *bind.QueryResult {
			spanCtx, span := m.Tracer.Start(ctx, "bind."+qc.Type.String())
			defer span.End()

			d, _ := qc.Descriptor()
			if d != nil {
				span.SetAttributes(attribute.String("sql", d.SQL))
				// 参数可能很大(如 blob), 也可能是敏感数据, 只记录个数
				span.SetAttributes(attribute.Int("args", len(d.Args)))
			}
			span.SetAttributes(attribute.String("query.id", qc.ID.String()))
			span.SetAttributes(attribute.String("component", "bind"))

			res := next(spanCtx, qc)
			if res.Err != nil {
				span.RecordError(res.Err)
			}
			return res
		}
	}
}
