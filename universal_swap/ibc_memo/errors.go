package ibcmemo

import errorsmod "cosmossdk.io/errors"

const Codespace = "ibc_memo"

// ErrEncoding covers bech32 decoding and binary memo (de)serialization failures
var ErrEncoding = errorsmod.Register(Codespace, 2, "memo encoding error")
