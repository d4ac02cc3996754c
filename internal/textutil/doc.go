// Package textutil decodes byte runs pulled out of archives into display text.
//
// Archives carry no declaration of their text encoding. UTF-8 is the default;
// the legacy single-byte code pages used by older game releases are available
// by name so umlauts and other extended characters survive the trip to the
// terminal.
package textutil
