// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session drives one voter at a time through the kiosk wizard.

# Stages

	registering → awaiting_otp → voting → showing_results → registering

Reset returns to registering from any stage and clears the tally. NextVoter
leaves showing_results while keeping it. Any other move panics.

# Committing a Vote

CastVote validates the choice, then holds the single commit slot for the
configured delay before writing the tally and registry together. Progress
reports the animation while it waits. A Reset during the delay bumps the
session generation, so the waiting vote is discarded with ErrStaleCommit
instead of being written.

# Errors

Every failure is a *Error. Its Kind is one of the sentinels below and its
Message is the notice already sent to the View:

	errors.Is(err, session.ErrDuplicateVoter)
	session.MessageFor(err).Text
*/
package session
