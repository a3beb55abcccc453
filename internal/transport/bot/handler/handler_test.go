package handler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"realty_extractor/internal/transport/bot/handler"
)

func TestCommandArgs(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want string
	}{
		{name: "command with text", text: "/extract Продаю 2-комн. кв.", want: "Продаю 2-комн. кв."},
		{name: "command with bot mention", text: "/extract@realty_bot  дом  ", want: "дом"},
		{name: "bare command", text: "/recent", want: ""},
		{name: "plain text", text: "  сдаю гараж ", want: "сдаю гараж"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, handler.CommandArgs(tc.text))
		})
	}
}

func TestPaginationKeyboard(t *testing.T) {
	rq := require.New(t)

	first := handler.PaginationKeyboard(1, true)
	rq.Len(first.InlineKeyboard, 1)
	rq.Len(first.InlineKeyboard[0], 2)
	rq.Equal("recent_page:2", first.InlineKeyboard[0][1].CallbackData)

	middle := handler.PaginationKeyboard(3, true)
	rq.Len(middle.InlineKeyboard[0], 3)
	rq.Equal("recent_page:2", middle.InlineKeyboard[0][0].CallbackData)

	last := handler.PaginationKeyboard(3, false)
	rq.Len(last.InlineKeyboard[0], 2)
	rq.Equal("noop", last.InlineKeyboard[0][1].CallbackData)
}
