/*
Package ibcmemo provides types and functions for building the memos that chain
the legs of a universal swap together.

Three memo families are produced.

1. Packet forward middleware (PFM)

Used when a chain only relays the tokens to the next chain. The receiver of the
incoming transfer is the user's address on the relaying chain, the forward
tells that chain where to send the tokens next:

	{
	  "forward": {
	    "receiver": "cosmos1bech32address",
	    "port": "transfer",
	    "channel": "channel-301",
	    "timeout": 600000000000,
	    "retries": 2,
	    "next": { ... memo for the chain after that ... }
	  }
	}

When the following memo is JSON it is nested as an object, any other memo (for
example a base64 binary memo) is nested as a string.

2. ibc-hooks swap_and_action

Used when the receiving chain swaps before it sends the tokens on. The receiver
of the incoming transfer is the entry point contract of that chain:

	{
	  "wasm": {
	    "contract": "osmo10a3k4hvk37cc4hnxctw4p95fhscd2z6h2rmx0aukc6rm8u9qqx9smfsh7u",
	    "msg": {
	      "swap_and_action": {
	        "user_swap": {
	          "swap_exact_asset_in": {
	            "swap_venue_name": "osmosis-poolmanager",
	            "operations": [
	              { "pool": "1464", "denom_in": "uosmo", "denom_out": "ibc/498A..." }
	            ]
	          }
	        },
	        "min_asset": { "native": { "denom": "ibc/498A...", "amount": "4584" } },
	        "timeout_timestamp": 1769794463350751700,
	        "post_swap_action": {
	          "ibc_transfer": {
	            "ibc_info": {
	              "source_channel": "channel-750",
	              "receiver": "noble1bech32address",
	              "memo": "",
	              "recover_address": "osmo1bech32address"
	            }
	          }
	        },
	        "affiliates": []
	      }
	    }
	  }
	}

The post swap action is one of transfer (stay on the chain), ibc_transfer (ICS-20
transfer onwards, memo carries the next leg) or ibc_wasm_transfer (Oraichain
cw-ics20 bridges, timeout in seconds).

The same swap_and_action message, without the wasm envelope, is executed
directly when the swap starts on the chain that holds the entry point.

3. Binary memos

The Oraichain cw-ics20 and universal swap hook contracts read protobuf encoded
memos instead of JSON. ParseToIbcWasmMemo and ParseToIbcHookMemo return them
base64 encoded, ready to be used as the memo string of a transfer. Addresses
inside the hooks memo are stored as canonical bytes (see CanonicalAddress).
*/
package ibcmemo
