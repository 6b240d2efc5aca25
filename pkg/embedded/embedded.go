package embedded

import (
	_ "embed"
)

// Embed all prompt data files
//
//go:embed data/prompts/bandleader_system.txt
var BandleaderSystemTxt []byte

//go:embed data/prompts/session_prompt.txt
var SessionPromptTxt []byte
