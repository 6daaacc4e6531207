package tweetvault

// Version is the current tweetvault release.
const Version = "0.1.0"
