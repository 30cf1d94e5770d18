package mysql

import "strings"

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLikePrefix turns raw user input into a prefix-match LIKE pattern.
// Queries using it must declare ESCAPE '!'.
func escapeLikePrefix(prefix string) string {
	return likeEscaper.Replace(prefix) + "%"
}
