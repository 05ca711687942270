package types

import (
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// ToProto returns the generated protobuf message with the same fields.
func (ts Timestamp) ToProto() *timestamppb.Timestamp {
	return &timestamppb.Timestamp{Seconds: ts.Seconds, Nanos: ts.Nanos}
}

// TimestampFromProto copies the fields of p. A nil p yields the zero value.
func TimestampFromProto(p *timestamppb.Timestamp) Timestamp {
	return Timestamp{Seconds: p.GetSeconds(), Nanos: p.GetNanos()}
}

// ToProto returns the generated protobuf message with the same fields.
func (d Duration) ToProto() *durationpb.Duration {
	return &durationpb.Duration{Seconds: d.Seconds, Nanos: d.Nanos}
}

// DurationFromProto copies the fields of p. A nil p yields the zero value.
func DurationFromProto(p *durationpb.Duration) Duration {
	return Duration{Seconds: p.GetSeconds(), Nanos: p.GetNanos()}
}
