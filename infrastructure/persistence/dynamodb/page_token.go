package dynamodb

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// pageKey is the serializable form of a DynamoDB exclusive start key.
// All table and index key attributes in this schema are strings.
type pageKey map[string]string

// encodePageToken converts a LastEvaluatedKey into an opaque token.
// A nil key yields an empty token, meaning no further pages.
func encodePageToken(lastKey map[string]types.AttributeValue) (string, error) {
	if len(lastKey) == 0 {
		return "", nil
	}

	key := make(pageKey, len(lastKey))
	for name, av := range lastKey {
		s, ok := av.(*types.AttributeValueMemberS)
		if !ok {
			return "", fmt.Errorf("unexpected key attribute type for %q", name)
		}
		key[name] = s.Value
	}

	raw, err := json.Marshal(key)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// decodePageToken converts an opaque token back into an exclusive
// start key. An empty token yields nil, meaning start from the top.
func decodePageToken(token string) (map[string]types.AttributeValue, error) {
	if token == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}

	var key pageKey
	if err := json.Unmarshal(raw, &key); err != nil {
		return nil, err
	}

	startKey := make(map[string]types.AttributeValue, len(key))
	for name, value := range key {
		startKey[name] = &types.AttributeValueMemberS{Value: value}
	}
	return startKey, nil
}
