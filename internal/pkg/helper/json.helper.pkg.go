package helper

import "encoding/json"

func JSONToByte(payload any) ([]byte, error) {
	return json.Marshal(payload)
}
