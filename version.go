package main

// _version is the version of hilite, set at release time.
var _version = "dev"
