package util

import "fmt"

const avatarSize = 256

// Avatar returns a deterministic generated avatar URL, used whenever a
// profile has no uploaded image.
func Avatar(seed string) string {
	return fmt.Sprintf("https://avatars.dicebear.com/api/bottts/%v.svg?size=%v", seed, avatarSize)
}
