// Package code defines the registered response codes of the service
package code

import (
	"fmt"
	"net/http"
)

type Code struct {
	// response code
	code int
	// true for success codes, false for error codes
	status bool
	// localized message
	Lang lang
	// attached payload
	data interface{}
	// whether data is set
	haveData bool
	// error details
	details []string
	// whether details are set
	haveDetails bool
}

var codes = map[int]string{}

// NewError registers an error code; duplicate codes panic at init time
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("error code %d already exists, pick another one", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: false, Lang: l}
}

var sussCodes = map[int]string{}

// NewSuss registers a success code
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("success code %d already exists, pick another one", code))
	}
	sussCodes[code] = l.GetMessage()
	return &Code{code: code, status: true, Lang: l}
}

// Clone creates a copy so that chained WithData/WithDetails calls do not
// mutate the registered code value
func (e *Code) Clone() *Code {
	c := &Code{
		code:        e.code,
		status:      e.status,
		Lang:        e.Lang,
		data:        e.data,
		haveData:    e.haveData,
		haveDetails: e.haveDetails,
	}
	c.details = append(c.details, e.details...)
	return c
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.haveData = true
	c.data = data
	return c
}

func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.haveDetails = true
	c.details = append(c.details, details...)
	return c
}

func (e *Code) StatusCode() int {
	return http.StatusOK
}
