package middleware

import tele "gopkg.in/telebot.v4"

// AdminOptions defines how admin-only checks behave.
// Allow reports whether the user may proceed; a non-nil error is passed to
// OnReject so callers can distinguish denial from a misconfigured allow-list.
type AdminOptions struct {
	Allow    func(userID int64) error
	OnReject func(c tele.Context, err error) error
}

// AdminOnlyMiddleware ensures that only allow-listed users can invoke downstream handlers.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if opts.Allow != nil {
				if err := opts.Allow(c.Sender().ID); err != nil {
					if opts.OnReject != nil {
						return opts.OnReject(c, err)
					}
					return nil
				}
			}
			return next(c)
		}
	}
}
