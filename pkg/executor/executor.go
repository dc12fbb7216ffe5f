package executor

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/denizgursoy/plainspec/pkg/spec"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// StepDefinition holds a compiled regex pattern and its associated function
type StepDefinition struct {
	Pattern  *regexp.Regexp
	Function any
}

// CustomType restricts the values a named parameter type accepts.
type CustomType struct {
	Name       string
	Underlying string
	// Values maps lower-cased accepted spellings to the value passed to the step.
	Values map[string]string
}

// StepExecutor is the step-definition registry. It matches step text
// against registered patterns and binds the step function to the captured
// arguments.
type StepExecutor struct {
	steps       []StepDefinition
	patternSet  map[string]bool // Track registered patterns for duplicate detection
	customTypes map[string]*CustomType
}

// NewStepExecutor creates a new StepExecutor
func NewStepExecutor() *StepExecutor {
	return &StepExecutor{
		steps:       make([]StepDefinition, 0),
		patternSet:  make(map[string]bool),
		customTypes: make(map[string]*CustomType),
	}
}

// RegisterStep registers a step definition with its regex pattern and function.
// The pattern is matched against the step text without its leading keyword.
func (e *StepExecutor) RegisterStep(pattern string, fn any) error {
	if e.patternSet[pattern] {
		return fmt.Errorf("duplicate step pattern: %s", pattern)
	}

	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid step pattern %q: %w", pattern, err)
	}

	fnType := reflect.TypeOf(fn)
	if fnType == nil || fnType.Kind() != reflect.Func {
		return fmt.Errorf("step handler must be a function, got %T", fn)
	}

	e.steps = append(e.steps, StepDefinition{
		Pattern:  compiled,
		Function: fn,
	})
	e.patternSet[pattern] = true
	return nil
}

// RegisterCustomType restricts parameters of the named type to the given
// values. Keys are matched case-insensitively.
func (e *StepExecutor) RegisterCustomType(name, underlying string, values map[string]string) {
	lowered := make(map[string]string, len(values))
	for k, v := range values {
		lowered[strings.ToLower(k)] = v
	}

	e.customTypes[name] = &CustomType{
		Name:       name,
		Underlying: underlying,
		Values:     lowered,
	}
}

// Len returns the number of registered step definitions.
func (e *StepExecutor) Len() int {
	return len(e.steps)
}

// Resolve finds the first step definition matching the step and returns it
// bound to the captured arguments and the step's block.
func (e *StepExecutor) Resolve(step *spec.Step) (spec.Action, bool) {
	text := step.Body()

	for _, stepDef := range e.steps {
		matches := stepDef.Pattern.FindStringSubmatch(text)
		if matches == nil {
			continue
		}

		// Extract capture groups (skip the full match at index 0)
		capturedArgs := matches[1:]
		fn := stepDef.Function
		block := step.Block

		return func(ctx context.Context) (context.Context, error) {
			return e.invokeStepFunction(ctx, fn, capturedArgs, block)
		}, true
	}

	return nil, false
}

// invokeStepFunction calls the step function with proper argument conversion
func (e *StepExecutor) invokeStepFunction(ctx context.Context, fn any, args []string, block spec.Block) (context.Context, error) {
	fnValue := reflect.ValueOf(fn)
	fnType := fnValue.Type()

	callArgs, err := e.buildCallArgs(ctx, fnType, args, block)
	if err != nil {
		return nil, err
	}

	results := fnValue.Call(callArgs)

	return processReturnValues(fnType, results)
}

// buildCallArgs constructs the argument slice for function invocation.
// context.Context parameters receive the scenario context, the others
// consume captured arguments in order, and a parameter left over after the
// captures receives the step's block.
func (e *StepExecutor) buildCallArgs(ctx context.Context, fnType reflect.Type, capturedArgs []string, block spec.Block) ([]reflect.Value, error) {
	numParams := fnType.NumIn()
	callArgs := make([]reflect.Value, 0, numParams)

	capturedIndex := 0
	blockUsed := false

	for i := 0; i < numParams; i++ {
		paramType := fnType.In(i)

		if paramType.Implements(contextType) {
			callArgs = append(callArgs, reflect.ValueOf(ctx))
			continue
		}

		if capturedIndex < len(capturedArgs) {
			arg := capturedArgs[capturedIndex]
			capturedIndex++

			converted, err := e.convertArg(arg, paramType)
			if err != nil {
				return nil, fmt.Errorf("failed to convert argument %q to %s: %w", arg, paramType, err)
			}
			callArgs = append(callArgs, converted)
			continue
		}

		if block != nil && !blockUsed {
			value, err := blockValue(block, paramType)
			if err != nil {
				return nil, err
			}
			blockUsed = true
			callArgs = append(callArgs, value)
			continue
		}

		return nil, fmt.Errorf("not enough captured arguments: expected %d more, have %d", numParams-i, len(capturedArgs)-capturedIndex)
	}

	return callArgs, nil
}

// blockValue adapts a block to the declared parameter type. Blocks exposing
// Value() hand that value over; otherwise the block itself is passed.
func blockValue(block spec.Block, paramType reflect.Type) (reflect.Value, error) {
	value := reflect.ValueOf(block)
	if v, ok := block.(interface{ Value() any }); ok {
		value = reflect.ValueOf(v.Value())
	}

	switch {
	case value.Type().AssignableTo(paramType):
		return value, nil
	case reflect.TypeOf(block).AssignableTo(paramType):
		return reflect.ValueOf(block), nil
	case value.Type().ConvertibleTo(paramType):
		return value.Convert(paramType), nil
	default:
		return reflect.Value{}, fmt.Errorf("cannot pass %s block to parameter of type %s", value.Type(), paramType)
	}
}

// processReturnValues extracts context and error from function return values
func processReturnValues(fnType reflect.Type, results []reflect.Value) (context.Context, error) {
	var newCtx context.Context
	var retErr error

	for i := 0; i < len(results); i++ {
		result := results[i]
		resultType := fnType.Out(i)

		if resultType.Implements(contextType) {
			if !result.IsNil() {
				newCtx = result.Interface().(context.Context)
			}
			continue
		}

		if resultType.Implements(errorType) {
			if !result.IsNil() {
				retErr = result.Interface().(error)
			}
			continue
		}
	}

	return newCtx, retErr
}

// convertArg converts a string argument to the target type. Named types
// registered with RegisterCustomType only accept their registered values.
func (e *StepExecutor) convertArg(arg string, targetType reflect.Type) (reflect.Value, error) {
	if ct, ok := e.customTypes[targetType.Name()]; ok && targetType.PkgPath() != "" {
		value, found := ct.Values[strings.ToLower(arg)]
		if !found {
			return reflect.Value{}, fmt.Errorf("invalid %s value %q", ct.Name, arg)
		}
		arg = value
	}

	v, err := convertBasic(arg, targetType.Kind())
	if err != nil {
		return reflect.Value{}, err
	}
	return v.Convert(targetType), nil
}

func convertBasic(arg string, kind reflect.Kind) (reflect.Value, error) {
	switch kind {
	case reflect.String:
		return reflect.ValueOf(arg), nil

	case reflect.Int:
		v, err := strconv.Atoi(arg)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil

	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(arg, 10, bitSize(kind))
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(arg, 10, bitSize(kind))
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimPrefix(arg, "$"), ",", ""), bitSize(kind))
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil

	case reflect.Bool:
		v, err := parseBool(arg)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(v), nil

	default:
		return reflect.Value{}, fmt.Errorf("unsupported parameter type: %s", kind)
	}
}

func bitSize(kind reflect.Kind) int {
	switch kind {
	case reflect.Int8, reflect.Uint8:
		return 8
	case reflect.Int16, reflect.Uint16:
		return 16
	case reflect.Int32, reflect.Uint32, reflect.Float32:
		return 32
	case reflect.Int, reflect.Uint:
		return 0
	default:
		return 64
	}
}

// parseBool accepts the usual spellings of a switch in step text.
func parseBool(arg string) (bool, error) {
	switch strings.ToLower(arg) {
	case "true", "yes", "on", "enabled", "1":
		return true, nil
	case "false", "no", "off", "disabled", "0":
		return false, nil
	default:
		return false, fmt.Errorf("cannot parse %q as bool", arg)
	}
}
