package logging

const (
	// KeyAppName is the attribute key for the application name.
	KeyAppName = `app`

	// KeyError is the attribute key for errors.
	KeyError = `err`

	// KeyDal is the attribute key for the data access layer in use.
	KeyDal = `dal`

	// KeyGuild is the attribute key for a guild ID.
	KeyGuild = `guild`

	// KeyUser is the attribute key for a user ID.
	KeyUser = `user`

	// KeyChannel is the attribute key for a channel ID.
	KeyChannel = `channel`
)
