// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase to match the browser client.

# Request Types

  - SubmitVoteRequest: choiceId
  - SetVotingModeRequest: mode
  - PostMessageRequest: name, text, houseId, isSystem

# Response Types

  - InitResponse: houses, messages
  - SubmitVoteResponse: success, recordedId, message, votingMode
  - VotingModeResponse: votingMode, description
  - PostMessageResponse: id, timestamp, success
  - ErrorResponse: error, message

# Domain Types

  - House: catalog entry with its vote count; exactly one has isTarget
  - Message: guest book entry
  - VoteLog: audit row for one accepted submission

# Limits

	MaxMessageNameLen  = 50
	MaxMessageTextLen  = 500
	RecentMessageLimit = 100
*/
package models
