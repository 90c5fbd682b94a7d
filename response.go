package swashbuckle

import "encoding/json"

// Empty represents a void response. Use this for operations that don't
// return meaningful data; endpoints returning Empty are documented with no
// response body.
//
// Example:
//
//	func DeleteOrder(ctx context.Context, req *DeleteOrderRequest) (swashbuckle.Empty, error) {
//	    // ... delete order
//	    return nil, nil
//	}
type Empty *struct{}

// response is the internal envelope type for successful responses.
type response struct {
	Result any `json:"result"`
}

// errorResponse is the internal envelope type for error responses.
type errorResponse struct {
	Error *Error `json:"error"`
}

// encodeResponse writes a successful response to the ResponseWriter.
func encodeResponse(w jsonWriter, result any) error {
	return json.NewEncoder(w).Encode(response{Result: result})
}

// encodeErrorResponse writes an error response to the ResponseWriter.
func encodeErrorResponse(w jsonWriter, err *Error) error {
	return json.NewEncoder(w).Encode(errorResponse{Error: err})
}

// jsonWriter is satisfied by http.ResponseWriter and allows testing.
type jsonWriter interface {
	Write([]byte) (int, error)
}
