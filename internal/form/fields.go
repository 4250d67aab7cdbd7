package form

import (
	"context"
)

// DemoForm adapts SubmitDemo to the field map a Machine collects.
func (s *Submitter) DemoForm() SubmitFunc {
	return func(ctx context.Context, f map[string]string) (any, error) {
		return s.SubmitDemo(ctx, DemoInput{
			Name:     f["name"],
			Email:    f["email"],
			Date:     f["date"],
			Time:     f["time"],
			Practice: f["practice"],
			Phone:    f["phone"],
		})
	}
}

// CallForm adapts SubmitCall to the field map a Machine collects.
func (s *Submitter) CallForm() SubmitFunc {
	return func(ctx context.Context, f map[string]string) (any, error) {
		return s.SubmitCall(ctx, CallInput{
			Name:          f["name"],
			Phone:         f["phone"],
			Practice:      f["practice"],
			PreferredTime: f["preferredTime"],
			Urgency:       f["urgency"],
		})
	}
}
