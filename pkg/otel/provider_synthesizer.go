package otel

import (
	"context"
	"time"

	"github.com/adrianliechti/speechbridge/pkg/provider"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/semconv/v1.38.0/genaiconv"
)

type Synthesizer interface {
	Observable
	provider.Synthesizer
}

type observableSynthesizer struct {
	model    string
	provider string

	synthesizer provider.Synthesizer

	operationDurationMetric genaiconv.ClientOperationDuration
}

func NewSynthesizer(provider, model string, p provider.Synthesizer) Synthesizer {
	meter := otel.Meter(instrumentationName)

	operationDurationMetric, _ := genaiconv.NewClientOperationDuration(meter)

	return &observableSynthesizer{
		synthesizer: p,

		model:    model,
		provider: provider,

		operationDurationMetric: operationDurationMetric,
	}
}

func (p *observableSynthesizer) otelSetup() {
}

func (p *observableSynthesizer) Synthesize(ctx context.Context, content string, options *provider.SynthesizeOptions) (*provider.Synthesis, error) {
	model := p.model

	if options != nil && options.Model != "" {
		model = options.Model
	}

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "synthesize "+model)
	defer span.End()

	timestamp := time.Now()

	if options != nil {
		span.SetAttributes(
			String("synthesis.voice", options.Voice),
			String("synthesis.format", options.Format),
		)
	}

	result, err := p.synthesizer.Synthesize(ctx, content, options)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if result != nil {
		duration := time.Since(timestamp).Seconds()

		providerName := genaiconv.ProviderNameAttr(p.provider)
		providerModel := model

		if result.Model != "" {
			providerModel = result.Model
		}

		p.operationDurationMetric.Record(ctx, duration,
			genaiconv.OperationNameGenerateContent,
			providerName,
			KeyValues([]KeyValue{
				p.operationDurationMetric.AttrRequestModel(model),
				p.operationDurationMetric.AttrResponseModel(providerModel),
			}, EndUserAttrs(ctx))...,
		)
	}

	return result, err
}
