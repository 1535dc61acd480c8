package app

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/lu-zhengda/contactsync/internal/domain"
	"github.com/lu-zhengda/contactsync/internal/provider"
)

// GroupsResult is the outcome of one group fetch. Username is the account the
// fetch was started for and is compared against the current selection before
// the groups are applied.
type GroupsResult struct {
	Username string
	Groups   []domain.Group
	Err      error
}

// GroupsCmd runs a group fetch. It may block on the network and must not touch
// controller state, so it can run off the event loop. Its result is handed to
// Controller.ApplyGroups.
type GroupsCmd func(ctx context.Context) GroupsResult

// newGroupsCmd chains the token exchange and the group fetch for username.
// The fetch only starts after a successful exchange. Failures end the chain
// without retry.
func newGroupsCmd(log zerolog.Logger, exchanger provider.TokenExchanger, fetcher provider.GroupFetcher, username, refreshToken string) GroupsCmd {
	return func(ctx context.Context) GroupsResult {
		res := GroupsResult{Username: username}

		log.Debug().Str("username", username).Msg("requesting access token")
		token, err := exchanger.Exchange(ctx, refreshToken)
		if err != nil {
			logPipelineFailure(log, username, err)
			res.Err = err
			return res
		}

		log.Debug().Str("username", username).Msg("fetching groups")
		groups, err := fetcher.FetchGroups(ctx, token, username)
		if err != nil {
			logPipelineFailure(log, username, err)
			res.Err = err
			return res
		}

		res.Groups = groups
		return res
	}
}

// logPipelineFailure logs a failed stage. Being offline is not worth a log line.
func logPipelineFailure(log zerolog.Logger, username string, err error) {
	if errors.Is(err, provider.ErrOffline) {
		return
	}
	ev := log.Warn().Err(err).Str("username", username)
	var te *provider.TransportError
	if errors.As(err, &te) {
		ev = ev.Str("stage", te.Stage).Int("status", te.Status)
	}
	ev.Msg("group fetch failed")
}
